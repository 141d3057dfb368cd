package inventory

import (
	"strconv"
	"strings"
)

// knownSizeOrder orden de las tallas de letra más comunes.
var knownSizeOrder = map[string]int{
	"XXS": 1, "XS": 2, "S": 3, "M": 4, "L": 5, "XL": 6,
	"XXL": 7, "2XL": 7, "XXXL": 8, "3XL": 8, "4XL": 9, "5XL": 10,
	"ALL SIZE": 50, "ALLSIZE": 50, "FREE SIZE": 50, "FS": 50,
}

// numericSizeBase desplaza las tallas numéricas (28, 30, 32...) detrás de las de letra.
const numericSizeBase = 100

// SizeSortOrder estima el orden de una talla nueva. ok=false si no se reconoce;
// en ese caso el llamador la coloca al final (máximo actual + 1).
func SizeSortOrder(name string) (order int, ok bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if o, found := knownSizeOrder[key]; found {
		return o, true
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 {
		return numericSizeBase + n, true
	}
	return 0, false
}
