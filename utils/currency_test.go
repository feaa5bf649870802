package utils_test

import (
	"errors"
	"testing"

	"github.com/valeriaulyamaeva/personal-finance-ledger/utils"
)

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	// Совпадающие валюты: сумма возвращается как есть, таблица не нужна
	got, err := utils.Convert(123.45, "USD", "USD", nil)
	if err != nil {
		t.Fatalf("ошибка конвертации: %v", err)
	}
	if got != 123.45 {
		t.Errorf("получили %f, хотели 123.45 без артефактов округления", got)
	}
}

func TestConvertThroughBase(t *testing.T) {
	rates := utils.RateTable{"USD": 1, "EUR": 0.9}
	got, err := utils.Convert(50, "USD", "EUR", rates)
	if err != nil {
		t.Fatalf("ошибка конвертации: %v", err)
	}
	if got != 45 {
		t.Errorf("получили %f, хотели 45", got)
	}

	back, err := utils.Convert(got, "EUR", "USD", rates)
	if err != nil {
		t.Fatalf("ошибка обратной конвертации: %v", err)
	}
	if diff := back - 50; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("туда-обратно: получили %f, хотели 50", back)
	}
}

func TestConvertMissingRate(t *testing.T) {
	rates := utils.RateTable{"USD": 1}
	_, err := utils.Convert(10, "USD", "JPY", rates)
	if !errors.Is(err, utils.ErrRateNotFound) {
		t.Errorf("отсутствующий курс: получили %v, хотели ErrRateNotFound", err)
	}
	_, err = utils.Convert(10, "JPY", "USD", rates)
	if !errors.Is(err, utils.ErrRateNotFound) {
		t.Errorf("отсутствующий курс источника: получили %v", err)
	}
}
