package model

// Principal is the acting identity of a request. A nil AccountID denotes an
// anonymous caller; anonymous principals always carry an empty permissions
// string and therefore never satisfy a non-empty declaration.
type Principal struct {
	AccountID   *int
	Username    string
	Permissions string
}

// AnonymousPrincipal returns the identity used when no session binding exists.
func AnonymousPrincipal() *Principal {
	return &Principal{Username: "anonymous"}
}

// Anonymous reports whether the principal has no bound account.
func (p *Principal) Anonymous() bool {
	return p == nil || p.AccountID == nil
}
