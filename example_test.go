package stoich_test

import (
	"fmt"

	"github.com/zephyrtronium/stoich"
)

func ExampleParseString() {
	c, err := stoich.ParseString("Mg3(PO4)2")
	if err != nil {
		panic(err)
	}
	for _, sym := range c.Elements() {
		fmt.Println(sym, c[sym])
	}
	// Output:
	// Mg 3
	// O 8
	// P 2
}

func ExampleBalance() {
	r, p, err := stoich.Balance([]string{"CH4", "O2"}, []string{"CO2", "H2O"})
	if err != nil {
		panic(err)
	}
	fmt.Println(r, p)
	// Output:
	// [1 2] [1 2]
}

func ExampleParseEquation() {
	eq, err := stoich.ParseEquation("Cu + HNO3 -> Cu(NO3)2 + NO + H2O")
	if err != nil {
		panic(err)
	}
	b, err := eq.Balance()
	if err != nil {
		panic(err)
	}
	fmt.Println(b)
	// Output:
	// 3 Cu + 8 HNO3 -> 3 Cu(NO3)2 + 2 NO + 4 H2O
}

func ExampleTable_MolarMass() {
	tab, err := stoich.NewTable(stoich.StandardWeights())
	if err != nil {
		panic(err)
	}
	m, err := tab.MolarMass("C6H12O6")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.3f g/mol\n", m)
	// Output:
	// 180.156 g/mol
}
