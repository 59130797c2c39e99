package config

// DefaultDenylistDomains returns domains whose history rows are left out of
// reports when filter.use_default_denylist is set: banking, password
// managers, identity providers and healthcare portals.
func DefaultDenylistDomains() []string {
	return []string{
		// Banking & payments
		"chase.com",
		"bankofamerica.com",
		"wellsfargo.com",
		"citi.com",
		"capitalone.com",
		"schwab.com",
		"fidelity.com",
		"vanguard.com",
		"paypal.com",
		"venmo.com",

		// Password managers
		"1password.com",
		"bitwarden.com",
		"lastpass.com",
		"dashlane.com",
		"keepersecurity.com",

		// Sign-in pages
		"accounts.google.com",
		"login.microsoftonline.com",
		"login.live.com",
		"appleid.apple.com",
		"okta.com",
		"auth0.com",

		// Healthcare
		"mychart.com",
		"kp.org",
		"healthcare.gov",

		// Tax & government identity
		"irs.gov",
		"login.gov",
		"id.me",
	}
}
