package stlmodel

// MeshAdapter documents, but does not implement, the shape a CAD-kernel
// adapter package (e.g. bridging to OpenCascade or Qt3D's mesh types)
// would satisfy to plug a foreign mesh representation into this module
// without copying triangle data through Mesh/MeshCreator. Grounded on
// original_source's occ_libstl.h, which defines exactly this kind of
// adapter for OpenCascade's BRepMesh triangulation.
//
// Such a package would typically wrap a foreign triangulated shape and
// implement Mesh directly against its native triangle storage (no copy),
// and implement MeshCreator by appending into the foreign kernel's own
// mesh builder API. Out of scope for this module: gmio only defines the
// interfaces an adapter would implement against (Mesh, MeshCreator) and
// does not ship any kernel-specific adapter itself.
type MeshAdapter interface {
	Mesh
	MeshCreator
}
