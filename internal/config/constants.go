package config

// DefaultDatabasePath is the default path for the telecom back-office database
const DefaultDatabasePath = "./telecom.db"
