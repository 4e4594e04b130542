package rbac

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadRegistry builds a Registry from a roles file (any format viper reads,
// picked from the extension):
//
//	roles:
//	  - name: student
//	    permissions: [viewCourses, submitAssignment]
//
// An empty path yields Default().
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading roles file %s", path)
	}

	var defs []RoleDefinition
	if err := v.UnmarshalKey("roles", &defs); err != nil {
		return nil, errors.Wrapf(err, "decoding roles file %s", path)
	}

	reg, err := NewRegistry(defs...)
	if err != nil {
		return nil, errors.Wrapf(err, "building registry from %s", path)
	}
	return reg, nil
}
