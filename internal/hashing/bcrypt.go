package hashing

import "golang.org/x/crypto/bcrypt"

// Пароли хранятся только в виде bcrypt-хэшей, сравнение — по хэшу.
type Bcrypt struct {
	cost int
}

// NewBcrypt приводит стоимость к допустимому диапазону bcrypt;
// ноль означает стоимость по умолчанию.
func NewBcrypt(cost int) *Bcrypt {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	return string(h), err
}

func (b *Bcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
