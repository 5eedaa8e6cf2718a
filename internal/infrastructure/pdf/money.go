package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// MoneyFormatter formatea montos según la moneda de la tienda:
// COP sin decimales con locale es-CO, USD con dos decimales en en-US.
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

// NewMoneyFormatter construye el formateador; monedas desconocidas usan en-US con 2 decimales.
func NewMoneyFormatter(currency string) MoneyFormatter {
	switch currency {
	case entity.CurrencyCOP:
		return MoneyFormatter{printer: message.NewPrinter(language.MustParse("es-CO")), symbol: "$", scale: 0}
	case entity.CurrencyUSD:
		return MoneyFormatter{printer: message.NewPrinter(language.AmericanEnglish), symbol: "US$", scale: 2}
	default:
		return MoneyFormatter{printer: message.NewPrinter(language.AmericanEnglish), symbol: currency + " ", scale: 2}
	}
}

// Format devuelve el monto con separadores de miles, p.ej. "$25.000" o "US$1,234.50".
func (f MoneyFormatter) Format(v decimal.Decimal) string {
	rounded := v.Round(int32(f.scale))
	return f.symbol + f.printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(f.scale)))
}
