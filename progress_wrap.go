package gmio

import (
	"github.com/fougue-go/gmio/stlio"
	"github.com/fougue-go/gmio/stlmodel"
)

// progressReadCreator wraps a caller's MeshCreator so Read can report
// progress without stlascii/stlbinary needing any awareness of it.
type progressReadCreator struct {
	stlmodel.MeshCreator
	reporter *stlio.ProgressReporter
	done     uint32
}

func newProgressReadCreator(creator stlmodel.MeshCreator, reporter *stlio.ProgressReporter) stlmodel.MeshCreator {
	return &progressReadCreator{MeshCreator: creator, reporter: reporter}
}

func (p *progressReadCreator) AddTriangle(id uint32, t stlmodel.Triangle) error {
	if err := p.MeshCreator.AddTriangle(id, t); err != nil {
		return err
	}
	p.done++
	p.reporter.Report(p.done)

	return nil
}

func (p *progressReadCreator) EndSolid() error {
	p.reporter.Done(p.done)

	return p.MeshCreator.EndSolid()
}

// progressWriteMesh wraps a caller's Mesh so Write can report progress
// the same way.
type progressWriteMesh struct {
	stlmodel.Mesh
	reporter *stlio.ProgressReporter
}

func newProgressWriteMesh(mesh stlmodel.Mesh, reporter *stlio.ProgressReporter) stlmodel.Mesh {
	return &progressWriteMesh{Mesh: mesh, reporter: reporter}
}

func (p *progressWriteMesh) GetTriangle(id uint32) (stlmodel.Triangle, error) {
	t, err := p.Mesh.GetTriangle(id)
	if err != nil {
		return t, err
	}
	p.reporter.Report(id + 1)
	if id+1 == p.Mesh.TriangleCount() {
		p.reporter.Done(id + 1)
	}

	return t, err
}
