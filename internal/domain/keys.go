package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserName  CtxKey = "UserName"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	KeyIdentity  CtxKey = "Identity"
)

// Identity is the verified caller, built only from validated token claims.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Email string `json:"email"`
}

func (i Identity) IsAuthenticated() bool {
	return i.ID != ""
}
