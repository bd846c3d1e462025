package seeding

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/erp/ausyexpo/internal/application/screen"
)

// fieldFunc produces a value for a named form field.
type fieldFunc func(f *gofakeit.Faker) string

// skipped fields are derived, server-assigned, or only set by actions.
var skipped = map[string]bool{
	"orderNumber":  true,
	"totalAmount":  true,
	"releaseDate":  true,
	"documentPath": true,
}

func amount(min, max float64) fieldFunc {
	return func(f *gofakeit.Faker) string {
		return strconv.FormatFloat(f.Price(min, max), 'f', 2, 64)
	}
}

func count(min, max int) fieldFunc {
	return func(f *gofakeit.Faker) string { return strconv.Itoa(f.Number(min, max)) }
}

func oneOf(values ...string) fieldFunc {
	return func(f *gofakeit.Faker) string { return f.RandomString(values) }
}

// common generators keyed by field name; screen-specific entries override them.
var common = map[string]fieldFunc{
	"name":               func(f *gofakeit.Faker) string { return f.Company() },
	"firstName":          func(f *gofakeit.Faker) string { return f.FirstName() },
	"lastName":           func(f *gofakeit.Faker) string { return f.LastName() },
	"email":              func(f *gofakeit.Faker) string { return f.Email() },
	"phone":              func(f *gofakeit.Faker) string { return f.Phone() },
	"address":            func(f *gofakeit.Faker) string { return f.Street() + ", " + f.City() },
	"manager":            func(f *gofakeit.Faker) string { return f.Name() },
	"description":        func(f *gofakeit.Faker) string { return f.Sentence(8) },
	"notes":              func(f *gofakeit.Faker) string { return f.Sentence(6) },
	"password":           func(f *gofakeit.Faker) string { return f.Password(true, true, true, false, false, 12) },
	"contactInformation": func(f *gofakeit.Faker) string { return f.Phone() },
	"quantity":           count(1, 500),
	"price":              amount(1, 250),
	"unitPrice":          amount(1, 250),
	"budget":             amount(1000, 500000),
	"title":              func(f *gofakeit.Faker) string { return f.BuzzWord() + " " + f.Noun() },

	"customerName":       func(f *gofakeit.Faker) string { return f.Company() },
	"customerEmail":      func(f *gofakeit.Faker) string { return f.Email() },
	"customerPhone":      func(f *gofakeit.Faker) string { return f.Phone() },
	"customerAddress":    func(f *gofakeit.Faker) string { return f.Street() + ", " + f.City() },
	"productName":        func(f *gofakeit.Faker) string { return f.ProductName() },
	"productCategory":    func(f *gofakeit.Faker) string { return f.ProductCategory() },
	"productDescription": func(f *gofakeit.Faker) string { return f.ProductDescription() },
	"specifications":     func(f *gofakeit.Faker) string { return f.ProductFeature() },

	"clientName":    func(f *gofakeit.Faker) string { return f.Company() },
	"clientContact": func(f *gofakeit.Faker) string { return f.Phone() },
	"clientEmail":   func(f *gofakeit.Faker) string { return f.Email() },
	"contractValue": amount(5000, 1000000),
	"terms":         func(f *gofakeit.Faker) string { return f.Sentence(10) },
	"deliverables":  func(f *gofakeit.Faker) string { return f.Sentence(6) },
	"paymentTerms":  func(f *gofakeit.Faker) string { return "Net " + strconv.Itoa(f.RandomInt([]int{15, 30, 45, 60})) },

	"stockType":    oneOf("Fabric", "Yarn", "Accessories", "Finished Goods"),
	"materialType": oneOf("Cotton", "Polyester", "Denim", "Silk", "Linen"),

	"itemName":        func(f *gofakeit.Faker) string { return f.ProductName() },
	"supplierName":    func(f *gofakeit.Faker) string { return f.Company() },
	"supplierContact": func(f *gofakeit.Faker) string { return f.Phone() },
	"minimumQuantity": count(0, 50),

	"vehicleNumber":      func(f *gofakeit.Faker) string { return f.LetterN(3) + "-" + f.DigitN(4) },
	"driverName":         func(f *gofakeit.Faker) string { return f.Name() },
	"driverContact":      func(f *gofakeit.Faker) string { return f.Phone() },
	"capacity":           count(1, 40),
	"maintenanceDetails": func(f *gofakeit.Faker) string { return f.Sentence(5) },
}

// overrides replace a common generator on one screen.
var overrides = map[string]map[string]fieldFunc{
	"departments": {
		"name": func(f *gofakeit.Faker) string {
			return f.RandomString([]string{"Cutting", "Sewing", "Finishing", "Quality", "Merchandising", "Finance", "HR"})
		},
	},
	"users": {
		"email": func(f *gofakeit.Faker) string { return f.Username() + "@" + f.DomainName() },
	},
}

func (sd *Seeder) values(key string, fields []screen.FieldInfo) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		if skipped[field.Name] {
			continue
		}
		v, err := sd.value(key, field)
		if err != nil {
			return nil, err
		}
		if v != "" {
			out[field.Name] = v
		}
	}
	return out, nil
}

func (sd *Seeder) value(key string, field screen.FieldInfo) (string, error) {
	f := sd.faker
	switch {
	case field.Type == "reference":
		if len(field.Choices) == 0 {
			if field.Required {
				return "", fmt.Errorf("%w: %s.%s", ErrNoReference, key, field.Name)
			}
			return "", nil
		}
		return strconv.FormatInt(field.Choices[f.IntN(len(field.Choices))].ID, 10), nil
	case len(field.Options) > 0:
		return f.RandomString(field.Options), nil
	case field.Type == "bool":
		// Mostly active records.
		return strconv.FormatBool(f.Float64() < 0.8), nil
	}

	if fn, ok := overrides[key][field.Name]; ok {
		return fn(f), nil
	}
	if fn, ok := common[field.Name]; ok {
		return fn(f), nil
	}

	now := sd.now()
	switch field.Type {
	case "date":
		if field.Name == "dateOfBirth" {
			return f.DateRange(now.AddDate(-60, 0, 0), now.AddDate(-18, 0, 0)).Format("2006-01-02"), nil
		}
		if field.Name == "endDate" || field.Name == "expectedDeliveryDate" {
			return f.DateRange(now.AddDate(0, 3, 0), now.AddDate(1, 0, 0)).Format("2006-01-02"), nil
		}
		return f.DateRange(now.AddDate(0, -3, 0), now).Format("2006-01-02"), nil
	case "datetime":
		return f.DateRange(now, now.AddDate(0, 1, 0)).Format("2006-01-02T15:04"), nil
	case "number":
		return count(1, 100)(f), nil
	}
	if field.Required {
		return f.Word(), nil
	}
	return "", nil
}
