/*
Package loyalty implements the points and tier calculator.

Points are awarded under a four-tier multiplier schedule keyed by the
pre-transaction balance:

	Member    < 500      x1.0
	Silver    [500,1500) x1.25
	Gold      [1500,5000) x1.5
	Platinum  >= 5000     x2.0

The same calculation is applied independently to a customer's spendable
balance and lifetime balance, each against its own pre-transaction value.
The two balances can therefore sit in different tiers at the same time;
that is intended, since the lifetime balance only ever grows while the
spendable balance is drawn down by voucher redemptions.

All functions are pure; persistence is the caller's concern.
*/
package loyalty
