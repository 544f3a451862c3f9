// Package currency normaliza valores monetários para a moeda de referência
// usando uma tabela fixa de taxas.
package currency

import (
	"strings"
)

// Converter converte valores para a moeda de referência. Códigos
// desconhecidos passam sem conversão (taxa 1) — aproximação tolerada,
// nunca um erro.
type Converter struct {
	reporting string
	rates     map[string]float64
}

// NewConverter cria um conversor para a moeda de referência informada.
// As chaves da tabela são normalizadas para maiúsculas.
func NewConverter(reporting string, rates map[string]float64) *Converter {
	normalized := make(map[string]float64, len(rates))
	for code, rate := range rates {
		if rate <= 0 {
			continue
		}
		normalized[strings.ToUpper(code)] = rate
	}

	return &Converter{
		reporting: strings.ToUpper(reporting),
		rates:     normalized,
	}
}

// Reporting retorna o código da moeda de referência
func (c *Converter) Reporting() string {
	return c.reporting
}

// Rate retorna a taxa aplicada ao código informado (1 para a moeda de
// referência e para códigos desconhecidos)
func (c *Converter) Rate(code string) float64 {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == c.reporting {
		return 1
	}

	if rate, ok := c.rates[code]; ok {
		return rate
	}

	return 1
}

// Convert expressa o valor na moeda de referência
func (c *Converter) Convert(amount float64, code string) float64 {
	return amount * c.Rate(code)
}
