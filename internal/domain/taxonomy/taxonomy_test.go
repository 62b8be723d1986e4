package taxonomy_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	Convey("Given the embedded taxonomy", t, func() {
		tx := taxonomy.Default()

		Convey("Then it should validate and expose skills and branches", func() {
			So(tx.Validate(), ShouldBeNil)
			So(tx.AllSkills(), ShouldContain, "React")
			So(tx.AllSkills(), ShouldContain, "C++")
			So(tx.Branches(), ShouldContain, "Mechanical Engineering")
		})

		Convey("Then accessors should return copies", func() {
			skills := tx.AllSkills()
			skills[0] = "mutated"
			So(tx.AllSkills()[0], ShouldNotEqual, "mutated")

			cats := tx.Categories()
			cats[0].Skills[0] = "mutated"
			So(tx.Categories()[0].Skills[0], ShouldNotEqual, "mutated")
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given an empty taxonomy", t, func() {
		tx := taxonomy.New(nil, nil)
		err := tx.Validate()

		Convey("Then both configuration errors should be reported", func() {
			So(errors.Is(err, taxonomy.ErrEmptyTaxonomy), ShouldBeTrue)
			So(errors.Is(err, taxonomy.ErrEmptyBranches), ShouldBeTrue)
			So(errors.Is(err, taxonomy.ErrConfiguration), ShouldBeTrue)
			So(tx.AllSkills(), ShouldBeEmpty)
		})
	})

	Convey("Given a taxonomy with only blank skills", t, func() {
		tx := taxonomy.New([]taxonomy.Category{{Name: "x", Skills: []string{" ", ""}}}, []string{"CSE"})

		Convey("Then it should count as empty", func() {
			So(errors.Is(tx.Validate(), taxonomy.ErrEmptyTaxonomy), ShouldBeTrue)
			So(errors.Is(tx.Validate(), taxonomy.ErrEmptyBranches), ShouldBeFalse)
		})
	})
}

func TestParseAndLoad(t *testing.T) {
	Convey("Given taxonomy documents", t, func() {
		dir := t.TempDir()

		Convey("When parsing JSON with duplicate skills across categories", func() {
			doc := `{"skills":{"web":["React","SQL"],"data":["SQL","Python"]},"engineering_branches_india":["CSE"]}`
			tx, err := taxonomy.Parse([]byte(doc))

			Convey("Then duplicates should be tolerated and order kept", func() {
				So(err, ShouldBeNil)
				So(tx.AllSkills(), ShouldResemble, []string{"React", "SQL", "SQL", "Python"})
				So(tx.Categories()[0].Name, ShouldEqual, "web")
				So(tx.Branches(), ShouldResemble, []string{"CSE"})
			})
		})

		Convey("When loading split skill and branch files", func() {
			skillsPath := filepath.Join(dir, "skills.json")
			branchPath := filepath.Join(dir, "branch.json")
			So(os.WriteFile(skillsPath, []byte(`{"languages":["Go","Python"],"frameworks":["React"]}`), 0o600), ShouldBeNil)
			So(os.WriteFile(branchPath, []byte(`{"engineering_branches_india":["Civil Engineering"]}`), 0o600), ShouldBeNil)

			tx, err := taxonomy.LoadFiles(skillsPath, branchPath)

			Convey("Then both lists should be read", func() {
				So(err, ShouldBeNil)
				So(tx.AllSkills(), ShouldResemble, []string{"Go", "Python", "React"})
				So(tx.Branches(), ShouldResemble, []string{"Civil Engineering"})
			})
		})

		Convey("When loading a combined YAML file", func() {
			path := filepath.Join(dir, "taxonomy.yaml")
			So(os.WriteFile(path, []byte("skills:\n  core: [SQL]\nengineering_branches_india: [IT]\n"), 0o600), ShouldBeNil)

			tx, err := taxonomy.Load(path)

			Convey("Then it should be read", func() {
				So(err, ShouldBeNil)
				So(tx.AllSkills(), ShouldResemble, []string{"SQL"})
			})
		})

		Convey("When the file is missing or malformed", func() {
			_, err1 := taxonomy.Load(filepath.Join(dir, "missing.yaml"))
			_, err2 := taxonomy.Parse([]byte("skills: [not, a, mapping]"))
			_, err3 := taxonomy.Parse([]byte("skills: {a: ["))

			Convey("Then load errors should be returned", func() {
				So(errors.Is(err1, taxonomy.ErrLoad), ShouldBeTrue)
				So(errors.Is(err2, taxonomy.ErrLoad), ShouldBeTrue)
				So(errors.Is(err3, taxonomy.ErrLoad), ShouldBeTrue)
			})
		})
	})
}
