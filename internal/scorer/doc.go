// Package scorer normalizes hardware model strings from requirement records
// and scores them against benchmark tables.
//
// A requirement value such as "Intel Core i5-4460 @ 3.2GHz or AMD FX-6300"
// is split into alternatives, each alternative is stripped of marketing
// words and clock speeds, and family prefixes are put into one canonical
// spelling ("GTX970" and "GTX 970" both become "GTX 970"). The best
// alternative found in the benchmark table is used; an unknown model gets a
// configurable default score instead of zero.
//
// The composite score of a game is
//
//	round(cpuScore*0.4 + gpuScore*0.5 + ramGB*150)
package scorer
