/*
Package contract exposes the asset sale as a plain Go API.

Every operation takes the acting identity explicitly, is serialized with all
other calls and is applied atomically: the state changes are written to the
underlying store only if the whole operation succeeded.

  c, err := contract.New(store.MemStore(), custodian, signers, 2)
  _, err = c.Mint(custodian, client, 111, 1000)
  _, err = c.SignTransaction(signer, 111)
  _, err = c.SignTransaction(client, 111)
  _, err = c.Deposit(client, 111, 1000)
*/
package contract
