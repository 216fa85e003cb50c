package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/reclaim-cli/reclaim/internal/models"
)

// SelectProjects presents a multi-select over the scanned projects and
// returns the chosen subset. An aborted form returns an empty selection, not
// an error. Any subset, including none, is a valid answer.
func SelectProjects(projects []models.Project) ([]models.Project, error) {
	if len(projects) == 0 {
		return nil, nil
	}

	options := make([]huh.Option[int], len(projects))
	for i, project := range projects {
		options[i] = huh.NewOption(projectLabel(project), i)
	}

	var selected []int
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[int]().
			Title("Select projects to clean").
			Options(options...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	chosen := make([]models.Project, 0, len(selected))
	for _, i := range selected {
		chosen = append(chosen, projects[i])
	}
	return chosen, nil
}

// ConfirmClean asks for a final go-ahead, showing the project count and the
// estimated total space to free.
func ConfirmClean(count int, totalSize int64) (bool, error) {
	confirmed := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Clean %d project(s), freeing an estimated %s?",
				count, humanize.IBytes(uint64(totalSize)))).
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

func projectLabel(project models.Project) string {
	size := "unknown size"
	if project.Metadata.EstimatedSize != nil {
		size = humanize.IBytes(uint64(*project.Metadata.EstimatedSize))
	}
	return fmt.Sprintf("%s [%s] (%s)", project.Name(), project.Kind, size)
}
