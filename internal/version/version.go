package version

import "runtime/debug"

func Get() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unavailable"
	}

	var revision, modified string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				modified = "-dirty"
			}
		}
	}

	if revision == "" {
		return "unavailable"
	}

	return revision + modified
}
