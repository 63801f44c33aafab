package household

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/etnz/household/date"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator, teaching it how to read
// the household value types.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			return v.Interface().(Money).Currency()
		}, Money{})
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			return v.Interface().(Quantity).AsFloat()
		}, Quantity{})
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			return v.Interface().(date.Date).String()
		}, date.Date{})
	})
	return validate
}

// Validate checks a record before it is handed to the store. The store itself
// accepts any record; callers taking user input validate first.
//
// Money fields must carry an ISO 4217 currency and all money fields of a
// record must share it.
func Validate(r Record) error {
	err := validatorInstance().Struct(r)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var all error
		for _, fe := range verrs {
			all = errors.Join(all, fmt.Errorf("invalid %s %s: %q fails %q", r.Kind(), fe.Field(), fmt.Sprint(fe.Value()), fe.Tag()))
		}
		err = all
	}
	if err != nil {
		return err
	}
	if cur := r.Currency(); cur != "" {
		for _, m := range moneyFields(r) {
			if m.Currency() != cur {
				return fmt.Errorf("invalid %s: mixed currencies %s and %s", r.Kind(), cur, m.Currency())
			}
		}
	}
	return nil
}

func moneyFields(r Record) []Money {
	switch v := r.(type) {
	case Budget:
		return []Money{v.Allocated, v.Spent}
	case FinancialDebt:
		return []Money{v.Amount, v.MonthlyPayment}
	case Property:
		return []Money{v.CurrentValue, v.PurchasePrice}
	case InvestmentAsset:
		return []Money{v.CurrentPrice, v.PurchasePrice}
	}
	return nil
}
