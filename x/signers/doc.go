/*
Package signers keeps the company signer roster: the set of identities that
may co-sign asset sale rounds, the quorum threshold and the custodian.

The threshold is fixed when the roster is created. Members can be added or
removed at any time by the custodian; both operations are idempotent.
*/
package signers
