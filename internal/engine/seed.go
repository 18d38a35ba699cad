package engine

import "persontable/internal/models"

func person(first, gender string, age int) models.Record {
	return models.Record{Name: models.Name{First: first}, Gender: gender, Age: age}
}

// SeedRecords returns the built-in 24 person dataset in load order.
func SeedRecords() []models.Record {
	return []models.Record{
		person("Mounika", "female", 22),
		person("Supriya", "female", 22),
		person("Anvesh", "male", 25),
		person("suvarna", "female", 38),
		person("Srija", "female", 30),
		person("Thriveni", "female", 33),
		person("Sneha", "female", 20),
		person("krishna", "male", 25),
		person("Nandhitha", "female", 19),
		person("mahesh", "male", 11),
		person("mamatha", "female", 26),
		person("vamshi", "male", 40),
		person("srinithi", "female", 23),
		person("srikruthi", "female", 55),
		person("greeshma", "female", 18),
		person("mithun", "male", 22),
		person("arjun", "male", 10),
		person("deepak", "male", 18),
		person("geetha", "female", 30),
		person("prasanna", "female", 24),
		person("raju", "male", 36),
		person("vishal", "male", 16),
		person("sunny", "male", 11),
		person("sahithya", "female", 8),
	}
}

func Seed() *ColumnStore {
	return NewColumnStore(SeedRecords())
}
