package scorer

// Built-in benchmark scores. CPU values are multi-thread CPU marks and GPU
// values are 3D marks, on the scale the composite weights expect. The
// config file can extend or override both tables.

// DefaultCPUScores returns a fresh copy of the built-in CPU table.
func DefaultCPUScores() map[string]float64 {
	return map[string]float64{
		// Core 2 era, still common as CYRI minimums.
		"Core2 Duo E4400":    780,
		"Core2 Duo E5200":    1000,
		"Core2 Duo E6600":    950,
		"Core2 Duo E8400":    1240,
		"Core2 Quad Q6600":   1800,
		"Core2 Quad Q9400":   2300,
		"Athlon 64 X2 4000+": 780,
		"Athlon II X2 250":   1400,
		"Phenom II X4 940":   2800,

		// Bare families are used when the page names no generation.
		"i3": 2500,
		"i5": 4200,
		"i7": 6000,
		"i9": 12000,

		"i3-530":    1600,
		"i3-2100":   2100,
		"i3-3220":   2300,
		"i3-4130":   2600,
		"i3-6100":   3600,
		"i3-8100":   6100,
		"i3-10100":  8800,
		"i3-12100F": 14300,
		"i5-750":    2500,
		"i5-2400":   3800,
		"i5-2500K":  4100,
		"i5-3470":   4700,
		"i5-3570K":  4900,
		"i5-4460":   4800,
		"i5-4590":   5200,
		"i5-4670K":  5400,
		"i5-6600K":  6300,
		"i5-7500":   6400,
		"i5-8400":   9200,
		"i5-9600K":  10700,
		"i5-10400":  12200,
		"i5-11400":  17000,
		"i5-12400":  19500,
		"i5-13400":  25000,
		"i7-920":    2800,
		"i7-2600K":  5300,
		"i7-3770":   6400,
		"i7-4770":   7100,
		"i7-4790K":  8000,
		"i7-6700K":  8900,
		"i7-7700K":  9700,
		"i7-8700":   13000,
		"i7-8700K":  13800,
		"i7-9700K":  14500,
		"i7-10700K": 19000,
		"i7-12700K": 34000,
		"i9-9900K":  18500,
		"i9-12900K": 41000,
		"i9-13900K": 59000,

		"FX-4300":         3300,
		"FX-6300":         4300,
		"FX-8320":         5600,
		"FX-8350":         6000,
		"Ryzen 3 1200":    6300,
		"Ryzen 3 3100":    11500,
		"Ryzen 5 1400":    7800,
		"Ryzen 5 1600":    12300,
		"Ryzen 5 2600":    13200,
		"Ryzen 5 3600":    17700,
		"Ryzen 5 5600X":   21900,
		"Ryzen 5 7600X":   28600,
		"Ryzen 7 1700":    14500,
		"Ryzen 7 2700X":   17500,
		"Ryzen 7 3700X":   22600,
		"Ryzen 7 5800X":   28000,
		"Ryzen 7 5800X3D": 28300,
		"Ryzen 7 7800X3D": 34400,
		"Ryzen 9 5900X":   39000,
		"Ryzen 9 7950X":   62500,
	}
}

// DefaultGPUScores returns a fresh copy of the built-in GPU table.
func DefaultGPUScores() map[string]float64 {
	return map[string]float64{
		"8800 GT":        1250,
		"9800GTX+":       1400,
		"GTS 250":        1350,
		"GTX 260":        1500,
		"GTX 460":        2400,
		"GTX 560":        2900,
		"GTX 560 Ti":     3400,
		"GTX 650":        1800,
		"GTX 660":        4100,
		"GTX 670":        5400,
		"GTX 750 Ti":     3900,
		"GTX 760":        4900,
		"GTX 770":        6000,
		"GTX 780":        7200,
		"GTX 950":        5300,
		"GTX 960":        6000,
		"GTX 970":        9650,
		"GTX 980":        11100,
		"GTX 1050":       4800,
		"GTX 1050 Ti":    6300,
		"GTX 1060":       10000,
		"GTX 1070":       13500,
		"GTX 1080":       15400,
		"GTX 1080 Ti":    18500,
		"GTX 1650":       7800,
		"GTX 1660":       11500,
		"GTX 1660 SUPER": 12700,
		"GT 730":         900,
		"GT 1030":        2600,
		"RTX 2060":       14000,
		"RTX 2070":       16000,
		"RTX 2080":       18600,
		"RTX 3050":       12800,
		"RTX 3060":       17000,
		"RTX 3060 Ti":    20300,
		"RTX 3070":       22400,
		"RTX 3080":       24500,
		"RTX 4060":       19700,
		"RTX 4070":       26800,
		"RTX 4080":       34500,
		"RTX 4090":       38200,

		"HD 4850":    1100,
		"HD 5770":    1900,
		"HD 6850":    2700,
		"HD 7770":    2500,
		"HD 7850":    4000,
		"HD 7870":    4700,
		"HD 7970":    6300,
		"R7 260X":    3000,
		"R7 370":     3700,
		"R9 270":     4400,
		"R9 280X":    6400,
		"R9 290":     7900,
		"R9 380":     5800,
		"RX 460":     3300,
		"RX 470":     6800,
		"RX 480":     7900,
		"RX 560":     3600,
		"RX 570":     7000,
		"RX 580":     8500,
		"RX 5500 XT": 8900,
		"RX 5700":    13500,
		"RX 5700 XT": 16000,
		"RX 6600":    15200,
		"RX 6700 XT": 19800,
		"RX 6800":    24000,
		"RX 7600":    17600,
		"RX 7800 XT": 26900,

		"HD 4000": 440,
		"HD 520":  850,
		"HD 620":  950,
		"UHD 620": 1000,
		"Iris Xe": 2500,
	}
}
