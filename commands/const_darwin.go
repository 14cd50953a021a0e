package commands

const (
	_etc = "/usr/local/etc/com.github.uhppoted"
	_var = "/usr/local/var/com.github.uhppoted"

	DEFAULT_CONFIG  = _etc + "/tracker.env"
	DEFAULT_WORKDIR = _var + "/tracker"
)
