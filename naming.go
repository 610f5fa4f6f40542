package regroup

// baseName returns the name that inserted groups' names are built from for a node.
func baseName(node, parent NodeRef, hasParent bool, mode NamingMode) string {
	if mode == UpperGroupName && hasParent {
		return string(parent)
	}
	return string(node)
}

// groupName returns the name a group is asked to have, before any collision handling.
func groupName(spec GroupSpec, base string, mode NamingMode, style NamingStyle) string {
	if mode == CustomName {
		return spec.Name
	}
	if style == Suffix {
		return base + "_" + spec.Name
	}
	return spec.Name + "_" + base
}

// collisionSuffix is appended once to a group name that's already taken. The result is not checked again; if it's
// also taken, creating the group fails and the node is reported.
const collisionSuffix = "_1"

func (ins *Inserter) resolveName(name string) (string, error) {
	existing, err := ins.host.FindByName(name)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return name + collisionSuffix, nil
	}
	return name, nil
}
