package content

import "cadence/internal/logging"

// AddChannel validates in, assigns a fresh id and creation time, and appends
// the channel to the collection.
func (s *Store) AddChannel(in ChannelInput) (Channel, error) {
	if err := s.checkChannel(in); err != nil {
		return Channel{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch := Channel{
		ID: newEntityID(channelIDPrefix, func(id string) bool {
			return s.channelIndex(id) >= 0
		}),
		BannerImage: in.BannerImage,
		AvatarImage: in.AvatarImage,
		Title:       in.Title,
		Contact:     in.Contact,
		Description: in.Description,
		Category:    in.Category,
		APIKey:      in.APIKey,
		Language:    in.Language,
		CreatedAt:   s.timestamp(),
	}
	s.channels = append(s.channels, ch)
	s.logger.Debug("channel added",
		logging.Channel(ch.ID),
		logging.String("title", ch.Title))
	return ch, nil
}

// UpdateChannel merges patch into the channel with the given id. A missing id
// is a no-op reported through the boolean. A patch that would blank a required
// field fails with a ValidationError and changes nothing.
func (s *Store) UpdateChannel(id string, patch ChannelPatch) (Channel, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.channelIndex(id)
	if idx < 0 {
		return Channel{}, false, nil
	}
	updated := s.channels[idx]
	patch.apply(&updated)
	if err := s.checkChannel(updated.input()); err != nil {
		return Channel{}, true, err
	}
	s.channels[idx] = updated
	s.logger.Debug("channel updated", logging.Channel(id))
	return updated, true, nil
}

// DeleteChannel removes the channel and every project that references it. It
// returns the ids of the removed projects and whether the channel existed.
func (s *Store) DeleteChannel(id string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.channelIndex(id)
	if idx < 0 {
		return nil, false
	}
	s.channels = append(s.channels[:idx:idx], s.channels[idx+1:]...)

	var removed []string
	kept := make([]VideoProject, 0, len(s.projects))
	for _, p := range s.projects {
		if p.ChannelID == id {
			removed = append(removed, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.projects = kept
	s.logger.Debug("channel deleted",
		logging.Channel(id),
		logging.Int("cascaded_projects", len(removed)))
	return removed, true
}
