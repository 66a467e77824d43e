package assembler

import (
	"errors"
	"strings"
)

var assemblerConfig Config

func GetConfig() Config {
	return assemblerConfig
}

func SetConfig(config Config) {
	assemblerConfig = config
}

// Compile translates source text into the instruction word stream. Labels that
// are never defined resolve to 0. The returned error is an *AssemblyError
// carrying the location of the first problem found.
func Compile(src string) ([]uint32, error) {
	nodes, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewGenerator(Config{}).Generate(nodes)
}

// Assemble runs the pipeline with the package configuration and keeps the
// side tables editors need.
func Assemble(input string) *AssembledResult {
	return AssembleWithConfig(input, assemblerConfig)
}

func AssembleWithConfig(input string, config Config) (res *AssembledResult) {
	res = new(AssembledResult)
	res.Labels = make(map[string]uint32)
	res.LabelToLine = make(map[string]int)
	res.AddressToLine = make(map[uint32]int)
	res.fileContents = strings.Split(input, "\n")

	nodes, err := Parse(input)
	if err != nil {
		res.addError(err)
		return
	}
	res.Nodes = nodes
	for _, n := range nodes {
		if label, ok := n.(*Label); ok {
			res.LabelToLine[label.Name] = label.Loc().Line - 1
		}
	}

	gen := NewGenerator(config)
	words, err := gen.Generate(nodes)
	if err != nil {
		res.addError(err)
		return
	}

	res.Words = words
	res.Labels = gen.Labels()
	res.Spans = gen.Spans()
	for _, span := range res.Spans {
		for i := 0; i < span.Count; i++ {
			res.AddressToLine[span.Start+uint32(i)] = span.Line
		}
	}
	res.Diagnostics = append(res.Diagnostics, gen.Warnings()...)
	return
}

func (a *AssembledResult) addError(err error) {
	var asmErr *AssemblyError
	if errors.As(err, &asmErr) {
		a.Diagnostics = append(a.Diagnostics, asmErr.Diagnostic())
		return
	}
	a.Diagnostics = append(a.Diagnostics, Diagnostic{
		Message:  err.Error(),
		Source:   "Assembler",
		Severity: Error,
	})
}
