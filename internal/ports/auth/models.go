package auth

// Claims representa la identidad del caller que entrega el host.
type Claims struct {
	UserID   string
	Username string // nombre visible en el feed; si falta se usa UserID
	Email    string
}

// DisplayName devuelve el nombre que se muestra en el feed.
func (c Claims) DisplayName() string {
	if c.Username != "" {
		return c.Username
	}
	return c.UserID
}
