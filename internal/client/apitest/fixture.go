package apitest

import "github.com/shopspring/decimal"

// Seed data. Tests refer to these values directly.
var (
	Ann = User{ID: "42", Name: "Ann Example", Email: "ann@example.com", Password: "secret"}
	Bob = User{ID: "43", Name: "Bob Example", Email: "bob@example.com", Password: "hunter2"}

	Breakfast = Category{ID: "1", Name: "Breakfast"}
	Lunch     = Category{ID: "2", Name: "Lunch"}

	Croissant = Product{ID: "p-101", Name: "Croissant", Price: decimal.RequireFromString("2.50"),
		Specification: "Butter croissant", PhotoURLs: []string{"https://img.example/croissant.jpg"}}
	Omelette = Product{ID: "p-102", Name: "Omelette", Price: decimal.RequireFromString("6.75")}
	Salad    = Product{ID: "p-201", Name: "Caesar Salad", Price: decimal.RequireFromString("9.90"),
		PhotoURLs: []string{"https://img.example/salad-1.jpg", "https://img.example/salad-2.jpg"}}
	Soup = Product{ID: "p-202", Name: "Soup of the day", Price: decimal.RequireFromString("4.20")}

	Office = Address{ID: "a-1", Title: "Office", Details: "5th floor, desk 12"}
	Home   = Address{ID: "a-2", Title: "Home", Details: "12 Elm Street"}
)

func seed(s *Server) {
	s.users = []User{Ann, Bob}
	s.categories = []Category{Breakfast, Lunch}
	s.products[Breakfast.ID] = []Product{Croissant, Omelette}
	s.products[Lunch.ID] = []Product{Salad, Soup}
	s.addresses[Ann.ID] = []Address{Office, Home}
}
