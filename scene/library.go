package scene

import "github.com/qmuntal/gltf"

// Library represents a collection of Scenes, as loaded from a .gltf / .glb file.
type Library struct {
	Scenes        []*Scene // A slice of Scenes
	ExportedScene *Scene   // The scene marked as the default scene in the file

	// document is the glTF document the Library was loaded from; meshes, materials, buffers and the like are
	// written back out from it untouched when the Library is saved.
	document *gltf.Document
}

// NewLibrary creates a new Library.
func NewLibrary() *Library {
	return &Library{
		Scenes: []*Scene{},
	}
}

// FindScene searches all scenes in a Library to find the one with the provided name. If a scene with the given name isn't found,
// FindScene will return nil.
func (lib *Library) FindScene(name string) *Scene {
	for _, scene := range lib.Scenes {
		if scene.Name == name {
			return scene
		}
	}
	return nil
}

// AddScene creates a new, empty Scene in the Library.
func (lib *Library) AddScene(sceneName string) *Scene {
	newScene := NewScene(sceneName)
	newScene.library = lib
	lib.Scenes = append(lib.Scenes, newScene)
	return newScene
}

// FindNode allows you to find a node by name by searching through each of a Library's scenes. If the Node with the given name isn't found,
// FindNode will return nil.
func (lib *Library) FindNode(objectName string) *Node {
	for _, scene := range lib.Scenes {
		if n := scene.Node(objectName); n != nil {
			return n
		}
	}
	return nil
}
