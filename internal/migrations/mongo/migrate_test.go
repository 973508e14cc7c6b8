package mongo

import (
	"testing"

	"carrental/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func TestLoadCarSeed(t *testing.T) {
	cars, err := LoadCarSeed()
	if err != nil {
		t.Fatalf("LoadCarSeed failed: %v", err)
	}
	if len(cars) == 0 {
		t.Fatal("seed catalog is empty")
	}

	byType := map[string]int{}
	for _, c := range cars {
		byType[c.Type]++
	}
	for _, ct := range model.CarTypes {
		if byType[ct] == 0 {
			t.Errorf("no %s cars in the seed catalog", ct)
		}
	}
}

func TestCollections(t *testing.T) {
	defs := collections()
	if len(defs) != 3 {
		t.Fatalf("expected 3 collections, got %d", len(defs))
	}

	for _, def := range defs {
		schema, ok := def.Validator["$jsonSchema"].(bson.M)
		if !ok {
			t.Errorf("%s: validator has no $jsonSchema", def.Name)
			continue
		}
		if _, ok := schema["required"].([]string); !ok {
			t.Errorf("%s: schema lists no required fields", def.Name)
		}
	}

	unique := 0
	for _, idx := range UsersIndexes {
		if idx.Options != nil && idx.Options.Unique != nil && *idx.Options.Unique {
			unique++
		}
	}
	if unique != 2 {
		t.Errorf("Users should carry two unique indexes, got %d", unique)
	}
}
