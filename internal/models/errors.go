package models

import "errors"

// ErrPrerequisite marks a missing runtime prerequisite (e.g. no usable AWS
// credentials). The CLI exits with ExitPrerequisite when it sees it.
var ErrPrerequisite = errors.New("required prerequisite is missing")

// ExitPrerequisite is EX_SOFTWARE from BSD sysexits
const ExitPrerequisite = 70
