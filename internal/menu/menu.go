// Package menu reads an optional YAML file that replaces the starter burgers
// and the add-on table.
package menu

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/angelmondragon/burgershop-backend/internal/burger"
	"github.com/angelmondragon/burgershop-backend/internal/catalog"
)

// File mirrors the YAML layout:
//
//	burgers:
//	  - name: Cheeseburger
//	    price: "415.00"
//	add_ons:
//	  - name: Lettuce
//	    price: "10"
type File struct {
	Burgers []Entry `yaml:"burgers"`
	AddOns  []Entry `yaml:"add_ons"`
}

type Entry struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Menu is a parsed file. A section missing from the file falls back to the
// built-in defaults.
type Menu struct {
	Items  []catalog.Item
	AddOns *burger.AddOnTable
}

func LoadFile(path string) (Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return Menu{}, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (Menu, error) {
	var raw File
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return Menu{}, fmt.Errorf("decode menu: %w", err)
	}

	out := Menu{Items: catalog.NewSeeded().List(), AddOns: burger.DefaultAddOns()}

	if len(raw.Burgers) > 0 {
		items := make([]catalog.Item, 0, len(raw.Burgers))
		for i, entry := range raw.Burgers {
			price, err := catalog.ParsePrice(entry.Price)
			if err != nil {
				return Menu{}, fmt.Errorf("burgers[%d] price %q: %w", i, entry.Price, err)
			}
			item, err := catalog.NewItem(entry.Name, price)
			if err != nil {
				return Menu{}, fmt.Errorf("burgers[%d]: %w", i, err)
			}
			items = append(items, item)
		}
		out.Items = items
	}

	if len(raw.AddOns) > 0 {
		addOns := make([]burger.AddOn, 0, len(raw.AddOns))
		for i, entry := range raw.AddOns {
			price, err := catalog.ParsePrice(entry.Price)
			if err != nil {
				return Menu{}, fmt.Errorf("add_ons[%d] price %q: %w", i, entry.Price, err)
			}
			addOns = append(addOns, burger.AddOn{Name: entry.Name, Price: price})
		}
		table, err := burger.NewAddOnTable(addOns)
		if err != nil {
			return Menu{}, fmt.Errorf("add_ons: %w", err)
		}
		out.AddOns = table
	}

	return out, nil
}
