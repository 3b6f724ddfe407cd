package auth

// Claims representa la información extraída del token.
// Role viene del servicio de identidad; este servicio la consume tal cual,
// sin validar credenciales por su cuenta.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
