package domain

type User struct {
	Email    string `db:"email" json:"email"`
	Name     string `db:"name" json:"name"`
	Hash     string `db:"password_hash" json:"-"`
	CartJSON string `db:"cart_json" json:"-"`
}

// Public is what callers outside the core may see of a user.
type Public struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() Public { return Public{Name: u.Name, Email: u.Email} }
