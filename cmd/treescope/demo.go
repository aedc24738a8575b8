package main

import (
	"fmt"
	"math"

	"github.com/structree/structree"
)

// The demo model is a tiny feed-forward network expressed as registered tree
// types, enough to show child fields, static fields, nesting and callable
// coloring in one place.

type Dense struct {
	structree.Struct
	Weights [][]float64
	Bias    []float64
	Name    string `tree:"static"`
}

func (d Dense) Call(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("Dense takes one input vector")
	}
	in, ok := args[0].([]float64)
	if !ok {
		return nil, fmt.Errorf("Dense input must be []float64, got %T", args[0])
	}
	out := make([]float64, len(d.Weights))
	for i, row := range d.Weights {
		if len(row) != len(in) {
			return nil, fmt.Errorf("row %d has %d weights for %d inputs", i, len(row), len(in))
		}
		for j, w := range row {
			out[i] += w * in[j]
		}
		if i < len(d.Bias) {
			out[i] += d.Bias[i]
		}
	}
	return out, nil
}

type Activation struct {
	structree.Struct
	Kind string `tree:"static"`
}

func (a Activation) Call(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("Activation takes one input vector")
	}
	in, ok := args[0].([]float64)
	if !ok {
		return nil, fmt.Errorf("Activation input must be []float64, got %T", args[0])
	}
	out := make([]float64, len(in))
	for i, v := range in {
		switch a.Kind {
		case "relu":
			out[i] = math.Max(0, v)
		case "tanh":
			out[i] = math.Tanh(v)
		default:
			out[i] = v
		}
	}
	return out, nil
}

type Sequential struct {
	structree.Struct
	Layers []any
	Name   string `tree:"static"`
}

func (s Sequential) Call(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("Sequential takes one input")
	}
	v := args[0]
	for i, layer := range s.Layers {
		c, ok := layer.(structree.Callable)
		if !ok {
			return nil, fmt.Errorf("layer %d is not callable", i)
		}
		out, err := c.Call(v)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		v = out
	}
	return v, nil
}

func (Sequential) TreescopeColor() (string, string) {
	return "", "#7D56F4"
}

type TrainConfig struct {
	structree.Struct
	LearningRate float64
	Steps        int
	Optimizer    string `tree:"static"`
}

func init() {
	structree.MustRegister[Dense]()
	structree.MustRegister[Activation]()
	structree.MustRegister[Sequential]()
	structree.MustRegister[TrainConfig]()
}

type demoEntry struct {
	name  string
	value any
}

func demoEntries() []demoEntry {
	model := structree.MustNew[Sequential](
		[]any{
			structree.MustNew[Dense]([][]float64{{0.5, -0.2}, {0.1, 0.8}}, []float64{0.0, 0.1}, "hidden"),
			structree.MustNew[Activation]("relu"),
			structree.MustNew[Dense]([][]float64{{1.0, -1.0}}, []float64{0.0}, "readout"),
		},
		"mlp",
	)
	cfg := structree.MustNew[TrainConfig](0.003, 1000, "adam")

	return []demoEntry{
		{name: "model", value: model},
		{name: "config", value: cfg},
	}
}
