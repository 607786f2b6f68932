package coolant

type tableData struct {
	name              string
	t, cp, mu, k, rho []float64
}

// Saturated liquid properties, used as compressed liquid values.
var builtins = map[string]tableData{
	"water": {
		name: "Water",
		t:    []float64{280, 300, 320, 340, 360, 380, 400, 420, 440, 460, 480, 500, 520, 540, 560},
		cp:   []float64{4198, 4179, 4180, 4188, 4203, 4226, 4256, 4299, 4357, 4433, 4533, 4664, 4838, 5081, 5440},
		mu: []float64{1.434e-3, 0.853e-3, 0.577e-3, 0.420e-3, 0.324e-3, 0.260e-3, 0.217e-3, 0.185e-3,
			0.162e-3, 0.143e-3, 0.129e-3, 0.118e-3, 0.108e-3, 0.099e-3, 0.091e-3},
		k: []float64{0.582, 0.610, 0.632, 0.652, 0.668, 0.680, 0.686, 0.688, 0.685, 0.678, 0.667,
			0.651, 0.632, 0.608, 0.580},
		rho: []float64{999.9, 996.5, 989.5, 979.5, 967.4, 953.3, 937.5, 919.9, 900.5, 879.2, 855.8,
			831.3, 804.0, 772.0, 735.0},
	},
	"ethanol": {
		name: "Ethanol",
		t:    []float64{260, 280, 300, 320, 340, 360, 380, 400, 420, 440, 460},
		cp:   []float64{2180, 2320, 2440, 2600, 2780, 2980, 3200, 3440, 3720, 4050, 4500},
		mu: []float64{2.40e-3, 1.60e-3, 1.07e-3, 0.75e-3, 0.54e-3, 0.40e-3, 0.31e-3, 0.24e-3,
			0.19e-3, 0.15e-3, 0.12e-3},
		k:   []float64{0.177, 0.171, 0.166, 0.161, 0.156, 0.151, 0.146, 0.141, 0.136, 0.131, 0.126},
		rho: []float64{819, 801, 785, 768, 751, 733, 713, 691, 667, 640, 608},
	},
}
