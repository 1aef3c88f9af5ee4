// Package shop implements the server side of a small shop-management
// application: credential + profile accounts with JWT session tokens,
// and SQL-backed resources for customers, vehicles, work orders,
// inventory, appointments and invoices.
package shop
