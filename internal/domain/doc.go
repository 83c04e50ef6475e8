// Package domain models parking/traffic citation contests and implements the
// decision logic that recommends whether and how to contest one.
//
// # Contest Kits
//
// Each violation type is covered by a ContestKit: an immutable reference
// record bundling eligibility rules, an evidence catalog (required /
// recommended / optional tiers), and argument templates. Kits are reference
// data owned by the catalog package; nothing in this package mutates them.
//
// # Arguments
//
// Every kit carries exactly one primary, one secondary, and one fallback
// argument plus zero or more situational ones. The fallback has no
// applicability conditions and the lowest win rate; it is the last-resort
// selection when nothing else survives condition filtering. Argument win
// rates are historical rates in [0, 1].
//
// # Rule checks
//
// Eligibility checks arrive as expression strings in catalog data
// ("daysSinceTicket <= 21"). They are parsed once, at catalog load time, into
// the typed RuleCheck variant here. Anything the grammar does not model
// becomes CheckAlwaysTrue: an unrecognized rule passes rather than blocking a
// motorist from contesting. The same fail-open bias applies to unknown
// condition operators. Both are deliberate, tested behaviors, not accidents;
// see the condition and eligibility tests.
//
// # Weather
//
// Kits declare how strongly historical weather can excuse or invalidate the
// citation (WeatherRelevance). The lookup itself is an external collaborator
// behind the WeatherLookup interface; its failure is never fatal, the
// evaluation simply proceeds without a weather defense.
package domain
