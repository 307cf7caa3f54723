/*
Package asset implements a two round quorum sale of a uniquely identified
asset.

An asset is minted by the custodian for a client at a fixed price. Company
signers, the client and an optional delegate sign each round. Once the
deposit round collects enough signatures the client may pay. The payment
opens the transfer round, and once that round is signed and the price is
paid off the custodian (or the delegate) hands the asset over to the client.

Every round snapshots the signer registry threshold when it opens, so
registry changes never affect a round in progress.
*/
package asset
