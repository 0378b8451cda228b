package content

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	out := s
	out.Dialogues = cloneDialogues(s.Dialogues)
	out.VideoSources = cloneSources(s.VideoSources)
	if s.Attachments != nil {
		out.Attachments = append([]Attachment{}, s.Attachments...)
	}
	return out
}

// Clone returns a deep copy of the project including its scenes.
func (p VideoProject) Clone() VideoProject {
	out := p
	out.Scenes = cloneScenes(p.Scenes)
	return out
}

func cloneScenes(scenes []Scene) []Scene {
	if scenes == nil {
		return nil
	}
	out := make([]Scene, len(scenes))
	for i, scene := range scenes {
		out[i] = scene.Clone()
	}
	return out
}

func cloneDialogues(turns []DialogueTurn) []DialogueTurn {
	if turns == nil {
		return nil
	}
	out := make([]DialogueTurn, len(turns))
	for i, turn := range turns {
		out[i] = DialogueTurn{
			Speaker1: cloneSpeaker(turn.Speaker1),
			Speaker2: cloneSpeaker(turn.Speaker2),
			Speaker3: cloneSpeaker(turn.Speaker3),
		}
	}
	return out
}

func cloneSpeaker(s *Speaker) *Speaker {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

func cloneSources(sources []VideoSource) []VideoSource {
	if sources == nil {
		return nil
	}
	out := make([]VideoSource, len(sources))
	for i, src := range sources {
		out[i] = src
		if src.Cuts != nil {
			out[i].Cuts = append([]Cut{}, src.Cuts...)
		}
	}
	return out
}

func cloneChannels(channels []Channel) []Channel {
	return append([]Channel{}, channels...)
}

func cloneProjects(projects []VideoProject) []VideoProject {
	out := make([]VideoProject, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}
