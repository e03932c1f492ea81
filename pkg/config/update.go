package config

// Update applies opts to the Config in order.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions turns the persistent part of the Config back into
// options, the way config.yaml stores it. HomeDir and
// Import.Overwrite are per-run values and are left out.
func (c *Config) ToOptions() []Option {
	var res []Option

	addStr := func(val string, opt func(string) Option) {
		if val != "" {
			res = append(res, opt(val))
		}
	}
	addInt := func(val int, opt func(int) Option) {
		if val > 0 {
			res = append(res, opt(val))
		}
	}

	db := c.Database
	addStr(db.Driver, OptDatabaseDriver)
	addStr(db.Path, OptDatabasePath)
	addStr(db.Host, OptDatabaseHost)
	addInt(db.Port, OptDatabasePort)
	addStr(db.User, OptDatabaseUser)
	addStr(db.Password, OptDatabasePassword)
	addStr(db.Database, OptDatabaseDatabase)
	addStr(db.SSLMode, OptDatabaseSSLMode)

	if c.Import.ShowProgress != nil {
		res = append(res, OptImportShowProgress(c.Import.ShowProgress))
	}

	addStr(c.Log.Format, OptLogFormat)
	addStr(c.Log.Level, OptLogLevel)
	addStr(c.Log.Destination, OptLogDestination)
	addInt(c.JobsNumber, OptJobsNumber)
	return res
}
