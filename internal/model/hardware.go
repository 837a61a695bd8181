package model

// HardwareSpec is the normalized view of a record's minimum requirements.
// It is derived on demand and never stored independently of its record.
type HardwareSpec struct {
	// CPUModel is the normalized CPU model, possibly empty.
	CPUModel string `json:"cpuModel"`

	// GPUModel is the normalized GPU model, possibly empty.
	GPUModel string `json:"gpuModel"`

	// RAMGB is the amount of RAM in gigabytes, 0 when unknown.
	RAMGB float64 `json:"ramGb"`

	// RAMFound distinguishes "no RAM value on the page" from a tiny amount.
	RAMFound bool `json:"ramFound"`

	// CPUScore is the benchmark score used for the CPU.
	CPUScore float64 `json:"cpuScore"`

	// CPUKnown is false when CPUScore is the default for unknown models.
	CPUKnown bool `json:"cpuKnown"`

	// GPUScore is the benchmark score used for the GPU.
	GPUScore float64 `json:"gpuScore"`

	// GPUKnown is false when GPUScore is the default for unknown models.
	GPUKnown bool `json:"gpuKnown"`

	// Composite is the weighted score of CPU, GPU and RAM.
	Composite int `json:"composite"`
}

// ScoredGame pairs a record with its derived hardware spec.
type ScoredGame struct {
	Rank  int          `json:"rank"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Spec  HardwareSpec `json:"spec"`
}
