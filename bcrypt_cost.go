//go:build !race

package shop

func passwordHashCost() int {
	return PasswordHashCost
}
