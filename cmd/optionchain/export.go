package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/quicktime/optionchain/src/eventmodels"
)

func exportChainCSV(contracts []*eventmodels.OptionContract, path string) error {
	dtos := make([]*eventmodels.OptionContractCSVDTO, 0, len(contracts))
	for _, contract := range contracts {
		dtos = append(dtos, contract.ToCSVDTO())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("exportChainCSV: failed to create %s: %w", path, err)
	}

	defer f.Close()

	if err := gocsv.MarshalFile(&dtos, f); err != nil {
		return fmt.Errorf("exportChainCSV: failed to write csv: %w", err)
	}

	return nil
}
