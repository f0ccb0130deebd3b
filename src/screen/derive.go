package screen

import (
	"sort"
	"strconv"
	"strings"

	"github.com/quicktime/optionchain/src/eventmodels"
)

// DeriveVisibleContracts filters a contract list to the selected option type
// and to contracts whose strike or open interest textually contains the
// filter string, then sorts ascending by strike. Pure presentation
// derivation: the input list is never mutated.
func DeriveVisibleContracts(contracts []*eventmodels.OptionContract, optionType eventmodels.OptionType, filter string) []*eventmodels.OptionContract {
	visible := make([]*eventmodels.OptionContract, 0, len(contracts))

	for _, contract := range contracts {
		if contract.OptionType != optionType {
			continue
		}

		if filter != "" && !matchesFilter(contract, filter) {
			continue
		}

		visible = append(visible, contract)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Strike < visible[j].Strike
	})

	return visible
}

func matchesFilter(contract *eventmodels.OptionContract, filter string) bool {
	strike := strconv.FormatFloat(contract.Strike, 'f', -1, 64)
	openInterest := strconv.FormatInt(contract.OpenInterest, 10)

	return strings.Contains(strike, filter) || strings.Contains(openInterest, filter)
}

// VisibleContracts derives the display list from the canonical contract set.
func (vm *ChainViewModel) VisibleContracts(optionType eventmodels.OptionType, filter string) []*eventmodels.OptionContract {
	return DeriveVisibleContracts(vm.Contracts(), optionType, filter)
}
