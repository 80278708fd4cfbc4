package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/branched-services/go-calldata"
)

// requestFile is the YAML layout accepted by -file:
//
//	calls:
//	  - signature: "transfer(address to, uint256 amount)"
//	    args: ["0x1111111111111111111111111111111111111111", 7]
//	  - signature: "f(uint256[] xs)"
//	    text: "[1, 2, 3]"
type requestFile struct {
	Calls []request `yaml:"calls"`
}

// request is one call to break down. Args holds structured values; Text
// holds the same in the comma-separated grammar. Args wins when both are set.
type request struct {
	Signature string `yaml:"signature"`
	Args      []any  `yaml:"args"`
	Text      string `yaml:"text"`
}

func loadRequests(r io.Reader) ([]request, error) {
	var f requestFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode calls: %w", err)
	}
	for i, c := range f.Calls {
		if c.Signature == "" {
			return nil, fmt.Errorf("call %d: missing signature", i)
		}
	}
	return f.Calls, nil
}

func (r request) values() ([]calldata.Value, error) {
	if r.Args == nil {
		list, err := calldata.ParseValues(r.Text)
		if err != nil {
			return nil, err
		}
		return list, nil
	}
	values := make([]calldata.Value, len(r.Args))
	for i, a := range r.Args {
		v, err := calldata.FromAny(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}
