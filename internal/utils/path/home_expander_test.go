package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/devhandbook/branchctl/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/developer"

func TestHomeExpanderExpand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{name: "bare_tilde", candidatePath: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix", candidatePath: "~/projects/service", expectedPath: filepath.Join(testHomeDirectoryConstant, "projects/service")},
		{name: "absolute_path_unchanged", candidatePath: "/srv/repositories/service", expectedPath: "/srv/repositories/service"},
		{name: "relative_path_unchanged", candidatePath: "./service", expectedPath: "./service"},
		{name: "empty_path_unchanged", candidatePath: "", expectedPath: ""},
		{name: "tilde_user_unchanged", candidatePath: "~developer/service", expectedPath: "~developer/service"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
				return testHomeDirectoryConstant, nil
			})

			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.candidatePath))
		})
	}
}

func TestHomeExpanderKeepsPathWhenHomeLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("home directory unavailable")
	})

	require.Equal(testInstance, "~/projects/service", expander.Expand("~/projects/service"))
}
