package domain

import "github.com/google/uuid"

// ValidID indica si id tiene forma de UUID; las claves primarias del sistema lo son.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
