package format

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"steinschliff/internal/model"
)

func TestTemperatureRange(t *testing.T) {
	tests := []struct {
		name   string
		ranges []model.TemperatureRange
		want   string
	}{
		{"warm to cold", []model.TemperatureRange{model.Range(-8, 1)}, "+1 °C … –8 °C"},
		{"integer floats", []model.TemperatureRange{model.Range(-10.0, 0.0)}, "0 °C … –10 °C"},
		{"both positive", []model.TemperatureRange{model.Range(2, 5)}, "+5 °C … +2 °C"},
		{"fractional", []model.TemperatureRange{model.Range(-2.5, -0.5)}, "–0.5 °C … –2.5 °C"},
		{"first range only", []model.TemperatureRange{model.Range(-3, -1), model.Range(-20, -10)}, "–1 °C … –3 °C"},
		{"missing min", []model.TemperatureRange{{Max: model.Float(1)}}, ""},
		{"missing max", []model.TemperatureRange{{Min: model.Float(1)}}, ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemperatureRange(tt.ranges))
		})
	}
}

func TestList(t *testing.T) {
	items := []model.Item{model.StringItem("a"), model.NullItem(), model.StringItem(""), model.IntItem(7), model.StringItem(" ")}
	assert.Equal(t, "a, 7", List(items, false))
	assert.Equal(t, "a, , 7,  ", List(items, true))
	assert.Equal(t, "", List(nil, false))
}

func TestSimilarsWithLinks(t *testing.T) {
	out := t.TempDir()
	index := map[string]string{
		"Alpha":   filepath.Join(out, "schliffs", "acme", "alpha.yaml"),
		"My Zeta": filepath.Join(out, "schliffs", "other vendor", "zeta.yaml"),
	}
	items := []model.Item{
		model.StringItem("Alpha"),
		model.NullItem(),
		model.StringItem("Unknown"),
		model.StringItem("My Zeta"),
	}
	got := SimilarsWithLinks(items, index, out)
	assert.Equal(t,
		"[Alpha](schliffs/acme/alpha.yaml), Unknown, [My Zeta](schliffs/other%20vendor/zeta.yaml)",
		got)
}

func TestImageLink(t *testing.T) {
	out := t.TempDir()
	assert.Equal(t, "", ImageLink(nil, "A", out))
	assert.Equal(t, "![A](images/a%20b.jpg)", ImageLink([]string{"images/a b.jpg", "second.jpg"}, "A", out))
	abs := filepath.Join(out, "img", "x.png")
	assert.Equal(t, "![X](img/x.png)", ImageLink([]string{abs}, "X", out))
}

func TestPhoneLink(t *testing.T) {
	assert.Equal(t, "[+7 900](tel:+7 900)", PhoneLink("+7 900"))
}

func TestURLEncodePath(t *testing.T) {
	assert.Equal(t, "a/b%20c/d.yaml", URLEncodePath("a/b c/d.yaml"))
	assert.Equal(t, "%D1%88%D0%BB%D0%B8%D1%84", URLEncodePath("шлиф"))
	assert.Equal(t, "x%28y%29", URLEncodePath("x(y)"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Blue", Capitalize("blue"))
	assert.Equal(t, "Acme grind", Capitalize("ACME GRIND"))
	assert.Equal(t, "Россия", Capitalize("россия"))
	assert.Equal(t, "", Capitalize(""))
}

type fakeNames map[string]string

func (f fakeNames) NameRU(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func TestCondition(t *testing.T) {
	names := fakeNames{"blue": "Синий"}
	assert.Equal(t, "Синий", Condition(names, "blue"))
	assert.Equal(t, "Синий", Condition(names, " BLUE "))
	assert.Equal(t, "Violet", Condition(names, "violet"))
	assert.Equal(t, "", Condition(names, ""))
	assert.Equal(t, "Violet", Condition(nil, "violet"))
}

func TestConditionEmoji(t *testing.T) {
	assert.Equal(t, "🔵", ConditionEmoji("blue"))
	assert.Equal(t, "⚪", ConditionEmoji("mystery"))
}
