package models

// Uname is the host identity reported to the guest.
type Uname struct {
	Sysname    string
	Nodename   string
	Release    string
	Version    string
	Machine    string
	Domainname string
}

// Utsname is the Linux struct new_utsname layout.
type Utsname struct {
	Sysname    [65]byte
	Nodename   [65]byte
	Release    [65]byte
	Version    [65]byte
	Machine    [65]byte
	Domainname [65]byte
}

func fill(dst *[65]byte, s string) {
	// keep a trailing NUL
	if len(s) > len(dst)-1 {
		s = s[:len(dst)-1]
	}
	copy(dst[:], s)
}

func (u *Uname) Utsname() *Utsname {
	out := &Utsname{}
	fill(&out.Sysname, u.Sysname)
	fill(&out.Nodename, u.Nodename)
	fill(&out.Release, u.Release)
	fill(&out.Version, u.Version)
	fill(&out.Machine, u.Machine)
	fill(&out.Domainname, u.Domainname)
	return out
}
