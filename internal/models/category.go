package models

// Category groups questions by topic. Categories are read-only at runtime.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DefaultCategories is seeded into every store on migration.
var DefaultCategories = []Category{
	{Name: "Core Java", Description: "Language fundamentals, OOP and the standard library"},
	{Name: "Collections", Description: "Lists, sets, maps and their concurrent variants"},
	{Name: "Multithreading", Description: "Threads, executors, locks and the memory model"},
	{Name: "JVM & Memory", Description: "Class loading, garbage collection and tuning"},
	{Name: "Spring Framework", Description: "IoC container, AOP and transactions"},
	{Name: "Spring Boot", Description: "Auto-configuration, starters and actuator"},
	{Name: "Spring Security", Description: "Authentication, authorization and filters"},
	{Name: "Microservices", Description: "Service decomposition, discovery and resilience"},
	{Name: "REST APIs", Description: "Resource design, status codes and versioning"},
	{Name: "Database & JPA", Description: "SQL, indexing, ORM mappings and transactions"},
	{Name: "Design Patterns", Description: "Creational, structural and behavioral patterns"},
	{Name: "Data Structures", Description: "Arrays, trees, graphs, heaps and hashing"},
	{Name: "Algorithms", Description: "Sorting, searching, dynamic programming and greedy"},
	{Name: "System Design", Description: "Scalability, caching, queues and consistency"},
}
