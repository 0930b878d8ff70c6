package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OtherCategory категория по умолчанию для продуктов вне справочника
const OtherCategory = "Other"

// CategoryCatalog справочник категорий продуктов.
// Используется скорером для классификации Upsell/Cross-Sell.
// После создания только читается, поэтому безопасен для конкурентного доступа.
type CategoryCatalog struct {
	categories map[string]string
}

// categoryFile формат YAML-файла справочника
type categoryFile struct {
	Categories map[string]string `yaml:"categories"`
}

// DefaultCategoryCatalog возвращает встроенный справочник категорий
func DefaultCategoryCatalog() *CategoryCatalog {
	return &CategoryCatalog{categories: map[string]string{
		"Drills":              "Power Tools & Accessories",
		"Drill Bits":          "Power Tools & Accessories",
		"Generators":          "Power Tools & Equipment",
		"Backup Batteries":    "Power Tools & Equipment",
		"Protective Gloves":   "Safety & Apparel",
		"Safety Gear":         "Safety & Apparel",
		"Workflow Automation": "Software/Services",
		"Collaboration Suite": "Software/Services",
		"API Integrations":    "Software/Services",
		"Advanced Analytics":  "Software/Services",
	}}
}

// LoadCategoryCatalog загружает справочник категорий из YAML-файла.
// Пустой путь возвращает встроенный справочник.
func LoadCategoryCatalog(path string) (*CategoryCatalog, error) {
	if path == "" {
		return DefaultCategoryCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("category file %s contains no categories", path)
	}

	return &CategoryCatalog{categories: file.Categories}, nil
}

// Category возвращает категорию продукта или OtherCategory, если продукт неизвестен
func (c *CategoryCatalog) Category(product string) string {
	if cat, ok := c.categories[product]; ok {
		return cat
	}
	return OtherCategory
}

// Size возвращает количество продуктов в справочнике
func (c *CategoryCatalog) Size() int {
	return len(c.categories)
}
