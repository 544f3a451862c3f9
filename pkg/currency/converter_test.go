package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Convert(t *testing.T) {
	converter := NewConverter("BRL", map[string]float64{
		"USD": 5.40,
		"EUR": 6.10,
	})

	tests := []struct {
		name     string
		amount   float64
		code     string
		expected float64
	}{
		{
			name:     "Moeda de referência não sofre conversão",
			amount:   150.0,
			code:     "BRL",
			expected: 150.0,
		},
		{
			name:     "Moeda conhecida é multiplicada pela taxa",
			amount:   100.0,
			code:     "USD",
			expected: 540.0,
		},
		{
			name:     "Código em minúsculas é normalizado",
			amount:   10.0,
			code:     "eur",
			expected: 61.0,
		},
		{
			name:     "Moeda desconhecida passa sem conversão",
			amount:   200.0,
			code:     "JPY",
			expected: 200.0,
		},
		{
			name:     "Código vazio passa sem conversão",
			amount:   75.5,
			code:     "",
			expected: 75.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, converter.Convert(tt.amount, tt.code))
		})
	}
}

func TestConverter_RoundTrip(t *testing.T) {
	converter := NewConverter("BRL", map[string]float64{"USD": 5.40})

	// Converter para a moeda de referência e voltar pela taxa inversa deve
	// aproximar o valor original
	original := 1234.56
	converted := converter.Convert(original, "USD")
	back := converted / converter.Rate("USD")

	assert.InDelta(t, original, back, 0.0001)
}

func TestConverter_InvalidRatesIgnored(t *testing.T) {
	converter := NewConverter("BRL", map[string]float64{"USD": -2.0, "EUR": 0})

	assert.Equal(t, 100.0, converter.Convert(100.0, "USD"))
	assert.Equal(t, 100.0, converter.Convert(100.0, "EUR"))
}
