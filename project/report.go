package project

import (
	"encoding/json"
	"os"

	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
)

type FileResult struct {
	Name        string                 `json:"name"`
	Status      string                 `json:"status"`
	Words       int                    `json:"words"`
	Output      string                 `json:"output"`
	Diagnostics []assembler.Diagnostic `json:"diagnostics"`
}

type Report struct {
	Files  []FileResult `json:"files"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
}

func NewReport() *Report {
	return &Report{
		Files: []FileResult{},
	}
}

func (fr *FileResult) SetStatus(success bool) {
	if success {
		fr.Status = "passed"
	} else {
		fr.Status = "failed"
	}
}

func (fr *FileResult) OutputPrintLn(str string) {
	fr.Output += str + "\n"
}

func (r *Report) AddFile(result FileResult) {
	if result.Diagnostics == nil {
		result.Diagnostics = []assembler.Diagnostic{}
	}
	if result.Status == "passed" {
		r.Passed++
	} else {
		r.Failed++
	}
	r.Files = append(r.Files, result)
}

func (r *Report) OK() bool {
	return r.Failed == 0
}

// Save writes the report as indented JSON.
func (r *Report) Save(path string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
