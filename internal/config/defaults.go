package config

const (
	// The system time command must be used explicitly, otherwise shells
	// substitute their own crippled builtin which ignores -f.
	defaultTimeBinary   = "/usr/bin/time"
	defaultNccopyBinary = "nccopy"
	defaultNc2ncBinary  = "nc2nc"
	defaultNcdumpBinary = "ncdump"
	defaultCdoBinary    = "cdo"
	defaultDlevel       = 5
	defaultTmpDir       = "tmp.nc_compress"
	defaultMaxCompress  = 10
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			Time:   defaultTimeBinary,
			Nccopy: defaultNccopyBinary,
			Nc2nc:  defaultNc2ncBinary,
			Ncdump: defaultNcdumpBinary,
			Cdo:    defaultCdoBinary,
		},
		Compress: Compress{
			Dlevel:      defaultDlevel,
			Shuffle:     true,
			TmpDir:      defaultTmpDir,
			MaxCompress: defaultMaxCompress,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
