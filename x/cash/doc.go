/*
Package cash keeps integer balances for addresses and moves value
between them.

There is no logic in the coins, except that a balance may never go
below zero or overflow. Thus, this implementation is referred to as
cash. Simple and safe.

Assets use cash to escrow deposits under an address derived from the
asset id, and to release them to the custodian on transfer.
*/
package cash
