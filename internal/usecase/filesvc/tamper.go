package filesvc

import (
	"math/rand"
)

// DefaultTamperPayload дописывается в конец файла, если payload не задан явно.
const DefaultTamperPayload = "Some additional data"

// Tamperer: хук для имитации порчи содержимого при загрузке.
// Возвращает байты, которые нужно дописать в конец файла, либо nil.
type Tamperer interface {
	Tamper() []byte
}

// CoinTamper с вероятностью Probability дописывает Payload к каждой загрузке.
type CoinTamper struct {
	Probability float64
	Payload     []byte
	roll        func() float64
}

// NewCoinTamper создаёт хук порчи с заданной вероятностью срабатывания.
func NewCoinTamper(probability float64, payload string) *CoinTamper {
	if payload == "" {
		payload = DefaultTamperPayload
	}
	return &CoinTamper{
		Probability: probability,
		Payload:     []byte(payload),
		roll:        rand.Float64,
	}
}

func (c *CoinTamper) Tamper() []byte {
	if c.Probability <= 0 {
		return nil
	}
	if c.roll() >= c.Probability {
		return nil
	}
	return c.Payload
}
