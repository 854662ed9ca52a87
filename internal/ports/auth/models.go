package auth

// Claims representa la identidad autenticada (lo que el servicio de auth nos devuelve).
type Claims struct {
	UserID      string
	Email       string
	DisplayName string
}

// FirstName devuelve el primer token del display name ("Hi, <nombre>").
func (c Claims) FirstName() string {
	for i, r := range c.DisplayName {
		if r == ' ' {
			return c.DisplayName[:i]
		}
	}
	return c.DisplayName
}
