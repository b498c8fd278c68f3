/*
Package ledger implements the credit accounting core.

It answers three questions for every AI tool invocation:

  - what is this user's current standing (GetSummary)
  - can this user afford this tool (CheckCredits)
  - record the outcome and charge for it (LogUsageAndCharge)

Spending power is the sum of the remaining free monthly quota and the paid
wallet balance. Charges consume free quota first, then the wallet; the wallet
portion is recorded on the usage event as meta.walletCharge so summaries can
attribute paid versus free usage.

Configuration is injected via LedgerConfig (monthly quota default, tool cost
table, plan thresholds) so tests can supply arbitrary values.
*/
package ledger
