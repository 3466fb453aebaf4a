package engine

import "testing"

func TestSceneAdd(t *testing.T) {
	scene := NewScene("Test")
	mesh := NewMesh("Box", NewBoxGeometry(1, 1, 1), nil)

	scene.Add(mesh)

	if len(scene.Meshes) != 1 {
		t.Errorf("Expected 1 mesh, got %d", len(scene.Meshes))
	}

	if scene.Meshes[0] != mesh {
		t.Error("Mesh not added to scene")
	}
}

func TestSceneTraverseSkipsHidden(t *testing.T) {
	scene := NewScene("Test")
	first := NewMesh("First", NewBoxGeometry(1, 1, 1), nil)
	hidden := NewMesh("Hidden", NewBoxGeometry(1, 1, 1), nil)
	hidden.Visible = false
	second := NewMesh("Second", NewSphereGeometry(1, 8, 8), nil)
	scene.Add(first)
	scene.Add(hidden)
	scene.Add(second)

	var visited []string
	scene.Traverse(func(m *Mesh) {
		visited = append(visited, m.Name)
	})

	if len(visited) != 2 || visited[0] != "First" || visited[1] != "Second" {
		t.Errorf("Unexpected traversal order: %v", visited)
	}
}

func TestSceneReceivers(t *testing.T) {
	scene := NewScene("Test")
	floor := NewMesh("Floor", NewPlaneGeometry(10, 10), nil)
	floor.ReceiveShadow = true
	hiddenFloor := NewMesh("HiddenFloor", NewPlaneGeometry(10, 10), nil)
	hiddenFloor.ReceiveShadow = true
	hiddenFloor.Visible = false
	scene.Add(floor)
	scene.Add(hiddenFloor)
	scene.Add(NewMesh("Box", NewBoxGeometry(1, 1, 1), nil))

	receivers := scene.Receivers()
	if len(receivers) != 1 || receivers[0] != floor {
		t.Errorf("Expected only the visible floor, got %d receivers", len(receivers))
	}
}
