package punch

import (
	"fmt"
	"strings"
)

// punchFile renders cards as a punch deck: each card padded to 72 columns
// and followed by an 8-column sequence number, like solver output.
func punchFile(cards ...string) string {
	var b strings.Builder
	for i, c := range cards {
		fmt.Fprintf(&b, "%-72s%8d\n", c, i+1)
	}
	return b.String()
}

func title(s string) string { return "$TITLE   = " + s }
func subcase(id int) string { return fmt.Sprintf("$SUBCASE ID = %11d", id) }
func pointID(id int) string { return fmt.Sprintf("$POINT ID = %10d  IDENTIFIED BY FREQUENCY", id) }
func plainPointID(id int) string { return fmt.Sprintf("$POINT ID = %10d", id) }
func elementID(id int) string { return fmt.Sprintf("$ELEMENT ID = %9d", id) }
func frequency(f float64) string { return fmt.Sprintf("$FREQUENCY = %15.6E", f) }
func elementType(code int) string { return fmt.Sprintf("$ELEMENT TYPE = %10d  CBUSH", code) }

func data(lead string, vals ...float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%10s       G", lead)
	for _, v := range vals {
		fmt.Fprintf(&b, "%18.6E", v)
	}
	return b.String()
}

func cont(vals ...float64) string {
	var b strings.Builder
	b.WriteString("-CONT-            ")
	for _, v := range vals {
		fmt.Fprintf(&b, "%18.6E", v)
	}
	return b.String()
}
